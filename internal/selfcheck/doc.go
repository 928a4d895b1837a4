// Package selfcheck runs the BigInteger and Fp property battery on randomly
// drawn operands and compares results against an independent arbitrary
// precision oracle.
//
// Samples are split across a bounded pool of workers. Each worker owns its
// random source, so no state is shared between workers apart from the
// result tally, the metrics registry and the progress callback.
package selfcheck
