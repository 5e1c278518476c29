// Package config loads runtime configuration for the Task Keeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. TASKKEEPER_SERVER_ADDR, TASKKEEPER_ONLINE_CHECK_INTERVAL and
//     TASKKEEPER_REQUEST_TIMEOUT environment variables.
//  4. Command-line flags -a, -i and -r.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
