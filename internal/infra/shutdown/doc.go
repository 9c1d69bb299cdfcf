// Package shutdown coordinates graceful process shutdown for greetd.
//
// A Handler waits for SIGINT/SIGTERM or an internally reported fault,
// then runs registered hooks in reverse order under a drain timeout.
package shutdown
