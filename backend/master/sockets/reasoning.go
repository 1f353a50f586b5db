package sockets

import "strings"

// 从生成的内容中提取思考的过程
// 开始和结束的标记都存在且顺序正确才提取：返回思考的内容和去掉标记后的正文
// 标记不完整（只有开始、或者结束在开始之前）的时候不处理，原文返回
func ExtractReasoning(text string, startMark string, endMark string) (reasoning *string, visible string) {
	startIndex := strings.Index(text, startMark)
	endIndex := strings.Index(text, endMark)

	if startIndex < 0 || endIndex < 0 || endIndex < startIndex {
		return nil, text
	}

	content := text[startIndex+len(startMark) : endIndex]
	visible = text[:startIndex] + text[endIndex+len(endMark):]
	return &content, visible
}
