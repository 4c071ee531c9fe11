// Package domain contains the core business entities, value objects, and
// domain logic of the application: accounts, preferences, progress records,
// interaction history, and the generated learning-content types. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
