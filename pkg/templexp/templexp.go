package templexp

import (
	"fmt"
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 变量表
// ═══════════════════════════════════════════════════════════════════════════

// Vars 是一次展开使用的变量表。
//
// ":=" 与 "=" 的赋值只写入这张表，调用方可通过 [Expand] 的返回后查看结果。
type Vars map[string]string

// Environ 返回当前环境变量快照。
func Environ() Vars {
	vars := make(Vars)
	for _, env := range os.Environ() {
		if key, value, ok := strings.Cut(env, "="); ok {
			vars[key] = value
		}
	}

	return vars
}

// ═══════════════════════════════════════════════════════════════════════════
// 表达式解析
// ═══════════════════════════════════════════════════════════════════════════

func isVarNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isVarNameChar(ch byte) bool {
	return isVarNameStart(ch) || (ch >= '0' && ch <= '9')
}

// parameter 是 ${...} 内部拆出的三元组：变量名、操作符、操作数。
type parameter struct {
	name string
	op   string
	word string
}

func parseParameter(expr string) (parameter, bool) {
	if expr == "" || !isVarNameStart(expr[0]) {
		return parameter{}, false
	}

	i := 1
	for i < len(expr) && isVarNameChar(expr[i]) {
		i++
	}

	p := parameter{name: expr[:i]}
	rest := expr[i:]
	if rest == "" {
		return p, true
	}

	if len(rest) >= 2 && rest[0] == ':' && strings.IndexByte("-+?=", rest[1]) >= 0 {
		p.op, p.word = rest[:2], rest[2:]
		return p, true
	}
	if strings.IndexByte("-+?=", rest[0]) >= 0 {
		p.op, p.word = rest[:1], rest[1:]
		return p, true
	}

	return parameter{}, false
}

func requiredError(name, word string) error {
	if word == "" {
		return fmt.Errorf("templexp: %s: parameter null or not set", name)
	}

	return fmt.Errorf("templexp: %s: %s", name, word)
}

// ═══════════════════════════════════════════════════════════════════════════
// 展开
// ═══════════════════════════════════════════════════════════════════════════

type expander struct {
	vars Vars
}

func (e *expander) word(word string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return e.text(word)
}

// eval 计算单个参数表达式。op 中带冒号时空值等同未设置。
func (e *expander) eval(p parameter) (string, error) {
	val, isSet := e.vars[p.name]
	empty := !isSet || (strings.HasPrefix(p.op, ":") && val == "")

	switch strings.TrimPrefix(p.op, ":") {
	case "":
		return val, nil
	case "-":
		if empty {
			return e.word(p.word)
		}
		return val, nil
	case "+":
		if empty {
			return "", nil
		}
		return e.word(p.word)
	case "?":
		if empty {
			return "", requiredError(p.name, p.word)
		}
		return val, nil
	case "=":
		if empty {
			expanded, err := e.word(p.word)
			if err != nil {
				return "", err
			}
			e.vars[p.name] = expanded
			return expanded, nil
		}
		return val, nil
	}

	return val, nil
}

func (e *expander) text(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		ch := text[i]
		if ch != '$' || i+1 >= len(text) {
			buf.WriteByte(ch)
			i++
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2
			continue
		case '{':
		default:
			buf.WriteByte(ch)
			i++
			continue
		}

		end := findMatchingBrace(text, i+2)
		if end == -1 {
			buf.WriteByte(ch)
			i++
			continue
		}

		p, ok := parseParameter(text[i+2 : end])
		if !ok {
			// 无法识别的表达式原样保留
			buf.WriteString(text[i : end+1])
			i = end + 1
			continue
		}

		expanded, err := e.eval(p)
		if err != nil {
			return "", err
		}
		buf.WriteString(expanded)
		i = end + 1
	}

	return buf.String(), nil
}

func findMatchingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		if text[i] == '$' && i+1 < len(text) && text[i+1] == '{' {
			depth++
			i++
			continue
		}
		if text[i] == '}' {
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

// Expand 使用给定变量表对文本执行 Shell 参数展开。
//
// vars 会被 ":=" / "=" 赋值修改；vars 为 nil 时视为空表。
func Expand(text string, vars Vars) (string, error) {
	if vars == nil {
		vars = make(Vars)
	}
	e := &expander{vars: vars}

	return e.text(text)
}

// ExpandTemplate 对输入字符串执行 Shell 参数展开，变量取自当前环境变量。
//
// 支持语法：
//   - ${VAR} - 变量替换
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// 返回展开后的字符串；仅在必填校验失败时返回 error。
func ExpandTemplate(text string) (string, error) {
	return Expand(text, Environ())
}
