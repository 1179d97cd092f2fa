package internal

// Version is the application version, shown by --version.
const Version = "1.1.0"
