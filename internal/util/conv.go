package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamUint lit un paramètre d'URL entier; répond 400 et renvoie faux si
// le paramètre est absent ou invalide
func ParamUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "paramètre "+name+" invalide")
		return 0, false
	}
	return uint(id), true
}
