package bake

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Scope 是一次展开所使用的数据树。
//
// Scope 按引用传递：同一棵展开树中的所有 include 共享同一个 Scope，
// 指令上的内联属性会直接合并进来，对后续兄弟指令与子树可见。
type Scope map[string]any

// Lookup 按点号路径查找嵌套值。
//
// 任一段缺失、中间值不是对象、或 scope 为 nil 时返回 false。
func Lookup(name string, scope Scope) (any, bool) {
	if scope == nil {
		return nil, false
	}

	var current any = map[string]any(scope)
	for _, segment := range strings.Split(name, ".") {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		next, ok := obj[segment]
		if !ok {
			return nil, false
		}
		current = next
	}

	return current, true
}

// Resolve 返回占位符的字符串值。
//
// 路径缺失时返回 ("", false)，由调用方决定是否告警；
// 存在但为假值 (false、""、0、nil) 时渲染为空字符串。
func Resolve(name string, scope Scope) (string, bool) {
	value, ok := Lookup(name, scope)
	if !ok {
		return "", false
	}
	if isFalsy(value) {
		return "", true
	}

	return stringify(value), true
}

// HasValue 判断路径是否存在且不严格等于 false。
//
// 空字符串、0 与对象都视为存在。
func HasValue(name string, scope Scope) bool {
	value, ok := Lookup(name, scope)
	if !ok {
		return false
	}
	if b, isBool := value.(bool); isBool && !b {
		return false
	}

	return true
}

// Merge 将 src 递归合并进 dst。
//
// src 中的 key 覆盖 dst 同名 key，两边都是对象时继续向下合并，未提及的 key 保持不变。
func Merge(dst, src Scope) {
	for key, value := range src {
		if srcObj, ok := asObject(value); ok {
			if dstObj, ok := asObject(dst[key]); ok {
				Merge(dstObj, srcObj)
				continue
			}
		}

		dst[key] = value
	}
}

// Section 返回顶层 key 对应的子对象。
func Section(scope Scope, name string) (Scope, bool) {
	if scope == nil {
		return nil, false
	}
	obj, ok := asObject(scope[name])
	if !ok {
		return nil, false
	}

	return obj, true
}

func asObject(value any) (Scope, bool) {
	switch typed := value.(type) {
	case Scope:
		return typed, typed != nil
	case map[string]any:
		return Scope(typed), typed != nil
	default:
		return nil, false
	}
}

func isFalsy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case bool:
		return !typed
	case string:
		return typed == ""
	case int:
		return typed == 0
	case int64:
		return typed == 0
	case uint64:
		return typed == 0
	case float64:
		return typed == 0
	case json.Number:
		f, err := typed.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}

func stringify(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	case Scope, map[string]any, []any:
		data, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}
		return string(data)
	default:
		return fmt.Sprint(typed)
	}
}
