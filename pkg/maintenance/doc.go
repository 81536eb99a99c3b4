// Package maintenance runs scheduled housekeeping over the alias store,
// removing aliases whose session files no longer exist.
package maintenance
