// README: Shared scalar types used across modules.
package types

// ID identifies a user, driver, or ride document.
type ID string
