// Package user holds the identity stub used for authorization: a user id, a
// username and a closed set of roles (student, teacher, dispatcher, admin).
package user
