package hcl

// fileRoot is the decoding target for a single configuration file. Every
// field is optional so that files can be layered.
type fileRoot struct {
	Schema   *string      `hcl:"schema,optional"`
	Document *string      `hcl:"document,optional"`
	Log      *logBlock    `hcl:"log,block"`
	Window   *windowBlock `hcl:"window,block"`
	Notify   *notifyBlock `hcl:"notify,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type windowBlock struct {
	Tab    *string `hcl:"tab,optional"`
	Hidden *bool   `hcl:"hidden,optional"`
	Watch  *bool   `hcl:"watch,optional"`
}

type notifyBlock struct {
	URL                *string `hcl:"url,optional"`
	Namespace          *string `hcl:"namespace,optional"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,optional"`
}
