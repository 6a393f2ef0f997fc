package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# SmishGuard configuration
#
# Search order (first match wins for each key):
#   environment (SMISHGUARD_*), .env, ./.smishguard.yaml,
#   ~/.config/smishguard/config.yaml, /etc/smishguard/config.yaml
version: "1.0"

api:
  # Address of the analysis service. Leave empty to use origin.
  # Env: SMISHGUARD_API_BASE
  base_url: ""

  # Address used when base_url is empty
  origin: "http://localhost:8000"

  # Analysis endpoint path
  path: "/api/v1/analyze"

  # Channel the message came from (sms, dm, email)
  channel: "sms"

  # Sent as X-Client-Id so the service can scope stored analyses
  client_id: ""

  # Per-request timeout, e.g. 30s. 0 waits until the service answers.
  timeout: 0s

ui:
  # default, high-contrast or minimal
  theme: "default"

  # Replace emoji with plain text markers
  no_emoji: false

  # Use the alternate terminal screen for the interactive app
  alt_screen: true

log:
  # debug, info, warn or error
  level: "warn"

  # Log file. The interactive app should log to a file so the screen
  # stays clean. Empty means stderr.
  file: ""

output:
  # Format used by "smishguard analyze": text, json, markdown or pretty
  default_format: "text"
`
}

// MinimalSampleConfig returns a compact configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
api:
  base_url: ""
  channel: "sms"
output:
  default_format: "text"
`
}
