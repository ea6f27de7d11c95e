package threadbundle

// Version is the current version of the go-threadbundle library
const Version = "1.0.0"
