// Package bake 将模板片段递归拼装为完整的静态文件。
//
// 源文件中的 include 指令会被替换为目标文件展开后的内容，
// {{dotted.key}} 占位符会被替换为内容数据 ([Scope]) 中的值。
//
// # 指令语法
//
//	<indent><!--(bake <path> [<key>="<value>" ...])-->
//
//   - path 以 "/" 开头时基于 [WithBasePath] 解析，否则相对引用方文件所在目录
//   - indent 非空时，被引入文件的每一行都会加上同样的缩进
//   - key="value" 会合并进当前 Scope，对子树与后续兄弟指令可见
//   - _if="dotted.key" 在 key 缺失或为 false 时跳过该指令
//
// # 处理流程
//
//  1. 对当前文本执行 [Processor] (默认为 [Placeholders])
//  2. 从左到右处理每条指令：_if 判断 → 合并内联属性 → 解析路径 → 读取 → 缩进 → 递归展开
//  3. 返回替换后的文本
//
// 同一棵展开树共享同一个 Scope，不做拷贝。
// include 目标不存在时记录警告并替换为空；循环引用返回 [ErrCircularInclude]。
//
// # 快速开始
//
//	b := bake.New(
//	    bake.WithContent("content.json"),
//	    bake.WithBasePath("app"),
//	)
//	err := b.Run(ctx, []bake.Task{
//	    {Src: "app/index.html", Dest: "dist/index.html"},
//	})
//
// 自定义处理器：
//
//	bake.WithProcessor(bake.Chain(bake.Placeholders{}, bake.ShellExpansion{}))
package bake
