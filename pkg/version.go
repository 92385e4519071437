package epoch

// Version is the release of the epoch binary and the MCP server it hosts.
const Version = "0.3.0"
