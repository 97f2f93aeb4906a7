package create

// State is a step of a creation run.
type State int

const (
	NotStarted State = iota
	ProbingEnvironment
	InstallingTemplatePackage
	MaterializingTemplate
	MergingManifest
	InstallingDevDependencies
	InstallingRuntimeDependencies
	Done
	RollingBack
	Failed
)

var stateNames = [...]string{
	NotStarted:                    "not-started",
	ProbingEnvironment:            "probing-environment",
	InstallingTemplatePackage:     "installing-template-package",
	MaterializingTemplate:         "materializing-template",
	MergingManifest:               "merging-manifest",
	InstallingDevDependencies:     "installing-dev-dependencies",
	InstallingRuntimeDependencies: "installing-runtime-dependencies",
	Done:                          "done",
	RollingBack:                   "rolling-back",
	Failed:                        "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
