// Package naming validates the project name and the target directory before
// anything is written. Names follow the npm package-name rules; the target
// directory may only contain files that cannot conflict with a generated
// project (VCS metadata, editor settings, a README, a license, and so on).
package naming
