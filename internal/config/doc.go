// Package config loads derive-gen configuration from YAML.
//
// A configuration file is optional; directives in source are enough for
// most projects. The file adds types that cannot carry a directive and
// overrides generator settings:
//
//	version: "1"
//	runtime_import: derive-generator/derive
//	suffix: _derive.go
//	concurrency: 4
//	types:
//	  - package: ./examples/config
//	    name: Config
//	    derive: [builder, debug]
package config
