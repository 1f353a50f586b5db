package datamodels

import "time"

// worker上安装的模型信息
// 从ollama的/api/tags整理出来的
type Model struct {
	Name     string    `json:"name" bson:"name"`         // 模型的名字
	Tags     []string  `json:"tags" bson:"tags"`         // 模型的标签
	Version  string    `json:"version" bson:"version"`   // 模型的版本
	Size     int64     `json:"size" bson:"size"`         // 模型的大小 字节
	Modified time.Time `json:"modified" bson:"modified"` // 最近修改时间
}
