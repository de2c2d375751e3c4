package errutils

// Package errutils provides a set of utilities for working with errors in Go.

// Example:
//
// The following example demonstrates how to use `MultiError` to collect several errors:
//
//     package main
//
//     import (
//         "fmt"
//         "oss.nandlabs.io/writerpool/errutils"
//     )
//
//     func main() {
//         errs := errutils.NewMultiErr(someFunction())
//         errs.Add(otherFunction())
//         if errs.HasErrors() {
//             fmt.Println(errs.Error())
//         }
//     }
//
// In the above example, the errors returned by `someFunction()` and `otherFunction()` are collected; nil errors are
// not added. `Error()` joins the collected messages with newlines, and the result is printed using `fmt.Println()`.
