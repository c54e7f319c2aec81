// Package cryptoalg defines the verbose-compute contracts: one processor
// interface per algorithm family, the result type each operation returns, and
// the error and randomness abstractions the processors share.
//
// Every result pairs the final output with the auxiliary artifacts needed to
// read it (alphabets, key schedules, matrices) and the ordered steps that
// produced it. Results are built fresh per call and owned by the caller.
package cryptoalg
