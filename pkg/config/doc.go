// Package config provides YAML-based configuration for the poaudit
// toolkit.
//
// Configuration is loaded in three steps: parse the YAML file, apply
// default values, validate. LoadWithEnvOverrides additionally applies
// POAUDIT_* environment variables between defaulting and validation, with
// environment values taking precedence over the file.
//
// All configuration is immutable after loading; components receive it by
// reference and never write to it.
package config
