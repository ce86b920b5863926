package services

import "strconv"

const userOwnerPrefix = "user-"

// UserOwner is the owner key under which a signed-in user's cart, orders
// and favorites are stored. Guests use their session id instead.
func UserOwner(userID int) string {
	return userOwnerPrefix + strconv.Itoa(userID)
}
