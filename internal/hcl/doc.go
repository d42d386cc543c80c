// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, expression
// evaluation and translation into the format-agnostic config.Model.
//
// A configuration file looks like:
//
//	schema   = "${base_dir}/attributes.xml"
//	document = "diagram.gv"
//
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
//
//	window {
//	  tab    = "node"
//	  hidden = false
//	  watch  = true
//	}
//
//	notify {
//	  url       = env("ATTRINSPECT_NOTIFY_URL")
//	  namespace = "/editor"
//	}
//
// Expressions can read the variable base_dir, the directory of the file
// being evaluated, and call env(name). Relative schema and document paths
// are resolved against base_dir.
package hcl
