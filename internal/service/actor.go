package service

import (
	"strconv"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
)

// Actor is the authenticated caller on whose behalf a service call runs.
type Actor struct {
	UserID uint
	Role   model.UserRole
	Email  string
}

func ActorFromClaims(claims *util.Claims) Actor {
	if claims == nil {
		return Actor{}
	}
	return Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}
}

// Label is what gets recorded as conductedBy on an assessment.
func (a Actor) Label() string {
	if a.Email != "" {
		return a.Email
	}
	return "user:" + strconv.FormatUint(uint64(a.UserID), 10)
}
