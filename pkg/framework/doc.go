// Package framework provides the polling loop and runner used for
// continuous acquisition.
package framework
