package errors

import "errors"

// ErrValueDecode 存储中的值无法按预期类型解析
var ErrValueDecode = errors.New("存储值格式无效")

// ErrStoreUnavailable 存储后端不可用
var ErrStoreUnavailable = errors.New("存储不可用")
