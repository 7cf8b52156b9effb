package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
)

var (
	once  sync.Once
	trans ut.Translator
)

// ginValidator 替换 gin 默认的校验器，错误信息使用 json 字段名并支持翻译
type ginValidator struct {
	validate *validator.Validate
}

func (v *ginValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	return v.validate.Struct(obj)
}

func (v *ginValidator) Engine() any {
	return v.validate
}

// LazyInitGinValidator 只初始化一次，language 支持 en / zh
func LazyInitGinValidator(language string) {
	once.Do(func() {
		validate := New(language)
		binding.Validator = &ginValidator{validate: validate}
	})
}

// New 创建一个使用 binding tag 的校验器并注册翻译
func New(language string) *validator.Validate {
	validate := validator.New()
	validate.SetTagName("binding")
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())
	var err error
	switch strings.ToLower(language) {
	case "zh", "zh-cn", "zh_cn":
		trans, _ = uni.GetTranslator("zh")
		err = zhTranslations.RegisterDefaultTranslations(validate, trans)
	default:
		trans, _ = uni.GetTranslator("en")
		err = enTranslations.RegisterDefaultTranslations(validate, trans)
	}
	if err != nil {
		trans = nil
	}
	return validate
}

// Translate 把校验错误翻译成可读信息，非校验错误原样返回
func Translate(err error) string {
	if err == nil {
		return ""
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	if trans == nil {
		return errs.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Translate(trans))
	}
	return strings.Join(msgs, "; ")
}
