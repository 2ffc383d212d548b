package bake

import "regexp"

// IfOption 是保留的内联属性，值为 Scope 中的点号路径，用于条件引入。
const IfOption = "_if"

var (
	directiveRegexp = regexp.MustCompile(`([ \t]*)<!--\(\s?bake\s+([\w/.\-]+)\s?([^>]*)\)-->`)
	attributeRegexp = regexp.MustCompile(`(\S+)="([^"]+)"`)
)

// Directive 是文本中的一处 include 指令。
//
// Start/End 为整条匹配（含缩进）在文本中的字节区间。
type Directive struct {
	Start      int
	End        int
	Indent     string
	Path       string
	Attributes string
}

// FindDirectives 按出现顺序返回文本中全部不重叠的指令。
func FindDirectives(text string) []Directive {
	matches := directiveRegexp.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	directives := make([]Directive, 0, len(matches))
	for _, m := range matches {
		directives = append(directives, Directive{
			Start:      m[0],
			End:        m[1],
			Indent:     text[m[2]:m[3]],
			Path:       text[m[4]:m[5]],
			Attributes: text[m[6]:m[7]],
		})
	}

	return directives
}

// ParseInlineOptions 从属性字符串中提取 key="value" 对。
//
// 无法匹配的部分直接忽略，不报错；重复 key 以后出现者为准。
func ParseInlineOptions(attributes string) map[string]string {
	values := make(map[string]string)
	for _, m := range attributeRegexp.FindAllStringSubmatch(attributes, -1) {
		values[m[1]] = m[2]
	}

	return values
}
