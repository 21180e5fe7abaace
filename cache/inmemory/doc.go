// Package inmemory implements process-local cache backends.
package inmemory
