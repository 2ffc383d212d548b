// Package templexp 提供配置字符串的 Shell 参数展开。
//
// 该包仅处理 ${...} 语法，用于配置文件、bake 内容文件 (JSON/YAML/TOML)
// 以及 bake 的 shell 处理器。不执行命令、不引入模板引擎，强调可读性与可预测性。
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. 支持嵌套展开与 "$$" 字面量
//  3. ":=" 赋值仅写入本次展开的变量表 [Vars]
//  4. 无法识别的表达式保持原样
//
// # 快速开始
//
// 展开配置文件中的环境变量引用：
//
//	content := `api_key: "${OPENAI_API_KEY}"`
//	expanded, err := templexp.ExpandTemplate(content)
//
// 使用默认值处理缺失的环境变量：
//
//	content := `model: "${LLM_MODEL:-gpt-4}"`
//	expanded, err := templexp.ExpandTemplate(content)
//
// 使用自定义变量表 (不读取环境变量)：
//
//	vars := templexp.Vars{"NAME": "bake"}
//	expanded, err := templexp.Expand(`hello ${NAME}`, vars)
//
// 详见 [ExpandTemplate] 与 [Expand] 文档。
package templexp
