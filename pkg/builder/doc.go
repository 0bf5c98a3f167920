// Package builder pairs a structure registry with a renderer. A Builder is
// created per interface (an admin page, a settings screen), filled through the
// five register calls and rendered once.
package builder
