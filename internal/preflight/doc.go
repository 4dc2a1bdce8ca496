// Package preflight provides readiness checks for external tools
// and filesystem paths that Scribe depends on.
//
// These checks run in two contexts:
//   - The run command calls RunAll before starting a transcription.
//     If a check fails, the run stops before spending minutes on a
//     download whose transcription could never start.
//   - The CLI "scribe status" command uses CheckSystemDeps and the
//     *FromConfig helpers to display tool and service health.
package preflight
