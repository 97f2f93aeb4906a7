package create

// Options configures a creation run.
type Options struct {
	// Name is the project directory as given by the user. Its base name is
	// the package name.
	Name     string
	Type     string
	Language string

	// UseNpmOnly skips yarn detection.
	UseNpmOnly bool
	// UsePlugAndPlay asks yarn for a Plug'n'Play install.
	UsePlugAndPlay bool
	Verbose        bool

	// AppType labels the project in console output, e.g. "web".
	AppType string
	// CheckAppNames are dependency names the project may not be called.
	CheckAppNames []string
	// TemplatePackage is the package holding templates/<type>/<language>,
	// optionally with a version ("create-app-templates@2.1.0").
	TemplatePackage string
	// StrictRuntime makes an outdated Node.js a fatal error instead of a
	// warning.
	StrictRuntime bool
	// RegistryHost overrides the registry resolved by the online probe.
	RegistryHost string
}

func (o Options) appType() string {
	if o.AppType != "" {
		return o.AppType
	}
	return o.Type
}
