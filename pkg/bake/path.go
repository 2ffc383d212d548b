package bake

import "strings"

// ResolvePath 计算 include 目标的路径。
//
//   - 以 "/" 开头：basePath + 去掉首个 "/" 的路径
//   - 否则：引用方文件所在目录 + "/" + 路径；引用方不含目录时原样返回路径
//
// 纯字符串拼接，不处理 ".."、"//" 或符号链接。
func ResolvePath(rawPath, includingFile, basePath string) string {
	if strings.HasPrefix(rawPath, "/") {
		return basePath + rawPath[1:]
	}

	dir := directory(includingFile)
	if dir == "" && !strings.HasPrefix(includingFile, "/") {
		return rawPath
	}

	return dir + "/" + rawPath
}

// NormalizeBasePath 保证非空 basePath 以 "/" 结尾。
func NormalizeBasePath(basePath string) string {
	if basePath != "" && !strings.HasSuffix(basePath, "/") {
		return basePath + "/"
	}

	return basePath
}

// directory 去掉路径最后一个 "/" 分段；没有 "/" 时返回空字符串。
func directory(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}

	return p[:i]
}
