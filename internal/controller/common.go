package controller

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/service"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

func currentActor(ctx *gin.Context) service.Actor {
	return service.ActorFromClaims(util.GetUserFromContext(ctx))
}
