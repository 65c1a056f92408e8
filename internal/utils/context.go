package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/polomanager/polomanager/internal/auth"
	"github.com/polomanager/polomanager/internal/types"
)

func GetCurrentClaims(ctx *gin.Context) (*auth.Claims, error) {
	value, exists := ctx.Get(types.ContextClaimsKey)

	if !exists {
		return nil, fmt.Errorf("user not authenticated")
	}

	claims, ok := value.(*auth.Claims)

	if !ok {
		return nil, fmt.Errorf("invalid claims type in context")
	}

	return claims, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	claims, err := GetCurrentClaims(ctx)

	if err != nil {
		return 0, err
	}

	return claims.UserID, nil
}
