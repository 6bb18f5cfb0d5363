package bootstrap

import (
	"campus-connect-server/domain/entity"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 注册自定义绑定校验
// campusrole: 只接受边界解析器认识的角色字面量（含 lead 别名）
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("campusrole", validateCampusRole)
}

func validateCampusRole(fl validator.FieldLevel) bool {
	return entity.ParseRole(fl.Field().String()).IsKnown()
}
