package camara

// Version is the library version, sent in the default User-Agent.
// Release builds of the CLI override the CLI's own version with ldflags.
const Version = "0.4.0"

// APIVersion is the Open Data API version the catalog targets.
const APIVersion = "v2"
