package service

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PostInput 发帖 / 编辑表单输入
type PostInput struct {
	Text    string `validate:"required"`
	GroupID string
	Image   string
}

// CommentInput 评论表单输入
type CommentInput struct {
	Text string `validate:"required"`
}

// SignupInput 注册表单输入
type SignupInput struct {
	Username    string `validate:"required,min=3,max=64,alphanum"`
	DisplayName string `validate:"max=128"`
	Password    string `validate:"required,min=6"`
}

// fieldErrors 把校验结果整理为 字段 -> 提示 的映射；
// 合法输入返回 nil，调用方据此走 Ok / Invalid 两个分支。
func fieldErrors(in any) map[string]string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "too short (minimum " + fe.Param() + ")"
	case "max":
		return "too long (maximum " + fe.Param() + ")"
	case "alphanum":
		return "only letters and digits are allowed"
	default:
		return "invalid value"
	}
}

// ValidatePostInput / ValidateCommentInput / ValidateSignupInput
// 返回 nil 表示通过。
func ValidatePostInput(in PostInput) map[string]string       { return fieldErrors(in) }
func ValidateCommentInput(in CommentInput) map[string]string { return fieldErrors(in) }
func ValidateSignupInput(in SignupInput) map[string]string   { return fieldErrors(in) }
