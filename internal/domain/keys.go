package domain

type CtxKey string

const (
	KeyPersonID CtxKey = "PersonID"
	KeyEmail    CtxKey = "Email"
	KeyRole     CtxKey = "Role"
)
