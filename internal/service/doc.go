// Package service implements the application's business operations on top of
// the state store: account registration and authentication, lesson
// generation, and progress tracking. Every operation that spans multiple
// collections runs inside a single atomic store update.
package service
