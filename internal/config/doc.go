// Package config loads the server configuration from environment variables.
//
// Every value has a default suitable for local development, so an empty
// environment yields a server on :8000 that expects models/doodle.onnx.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
package config
