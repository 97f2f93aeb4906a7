// Package pkgmgr drives the Node package managers used to materialize a
// project. It has two halves:
//
//   - Prober inspects the environment once per run: which manager is
//     available, its version, whether the registry is reachable (with a proxy
//     fallback), and whether npm reports the working directory it was started in.
//   - Installer turns a Request into a single npm or yarn invocation, runs it
//     with the caller's terminal attached, and reports a non-zero exit as
//     *errutils.InstallError carrying the command line.
//
// Both reach the outside world only through the Runner and Resolver
// interfaces so tests can substitute fakes.
package pkgmgr
