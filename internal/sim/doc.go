// Package sim contains the simulation engines for the delivery empire:
// time-driven accrual, the upgrade economy, the narrative event engine and
// the orchestrator that serialises every mutation behind a single lock.
//
// ARCHITECTURAL RULE: engines mutate company state only through the pure
// helpers in domain/rules and the declarative effect evaluator. No engine
// reads the wall clock or a global random source; time and randomness are
// always passed in, so every run is replayable.
package sim
