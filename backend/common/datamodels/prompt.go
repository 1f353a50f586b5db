package datamodels

// Benchmark用的提示词
// 支持从prompts目录导入.md文件
type Prompt struct {
	BaseFields
	Name    string `gorm:"size:100;UNIQUE_INDEX;NOT NULL" json:"name"` // 提示词的名字
	Content string `gorm:"type:text;NOT NULL" json:"content"`          // 提示词的内容
	Source  string `gorm:"size:200" json:"source"`                     // 来源，比如导入的文件名
}
