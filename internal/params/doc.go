// Package params builds the session environment from its layered sources.
//
// Layers, lowest precedence first:
//   - built-in defaults (HOME, USER, PWD, SHELL, HOSTNAME)
//   - the env map in termquest.yaml
//   - a dotenv file (env_file in termquest.yaml or --env-file)
//   - --env KEY=VALUE flags
//
// Dotenv files are read with github.com/joho/godotenv, so quoting, comments
// and "export" prefixes follow its rules.
package params
