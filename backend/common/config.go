package common

import (
	"fmt"
	"io/ioutil"
	"log"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-yaml/yaml"
)

var config *Config

// http Web相关的配置
type HttpConfig struct {
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
	Timeout int    `json:"timeout" yaml:"timeout"` // 超时时间 毫秒
}

// 心跳相关的配置
type HeartbeatConfig struct {
	Interval      int `json:"interval" yaml:"interval"`             // worker上报心跳的间隔 秒
	MaxMissed     int `json:"max_missed" yaml:"max_missed"`         // 最多可丢失的心跳次数，超过就是不健康的
	CheckInterval int `json:"check_interval" yaml:"check_interval"` // monitor清理的周期 秒
}

// benchmark相关的配置
type BenchmarkSettings struct {
	Cooldown         int    `json:"cooldown" yaml:"cooldown"`                   // 每轮迭代之间的间隔 秒
	IterationTimeout int    `json:"iteration_timeout" yaml:"iteration_timeout"` // 单次迭代的超时 秒，0表示不限制
	OllamaUrl        string `json:"ollama_url" yaml:"ollama_url"`               // 本地benchmark用的ollama地址
}

// master mongodb config
type MongoConfig struct {
	Hosts    []string `json:"hosts" yaml:"hosts"`       // 主机列表
	User     string   `json:"user" yaml:"user"`         // 用户名
	Password string   `json:"password" yaml:"password"` // MongoDB的用户密码
	Database string   `json:"database" yaml:"database"` // 数据库的名字
}

// MySQL数据库相关配置
type MySQLDatabase struct {
	Host     string `json:"host" yaml:"host"`         // 数据库地址
	Port     int    `json:"port" yaml:"port"`         // 端口号
	User     string `json:"user" yaml:"user"`         // 用户
	Password string `json:"password" yaml:"password"` // 用户密码
	Database string `json:"database" yaml:"database"` // 数据库
}

// master相关的配置
type MasterConfig struct {
	Http      *HttpConfig        `json:"http" yaml:"http"`           // worker对接的api服务
	Web       *HttpConfig        `json:"web" yaml:"web"`             // 管理端的web服务
	Heartbeat *HeartbeatConfig   `json:"heartbeat" yaml:"heartbeat"` // 心跳的配置
	Benchmark *BenchmarkSettings `json:"benchmark" yaml:"benchmark"` // benchmark的配置
	Prompts   string             `json:"prompts" yaml:"prompts"`     // prompt文件所在的目录
}

// worker相关的配置
type WorkerConfig struct {
	Http              *HttpConfig `json:"http" yaml:"http"`
	Name              string      `json:"name" yaml:"name"`                             // worker的标识，不填用 Ip:Port
	MasterUrl         string      `json:"master_url" yaml:"master_url"`                 // master的地址
	OllamaUrl         string      `json:"ollama_url" yaml:"ollama_url"`                 // 本机ollama服务的地址
	HeartbeatInterval int         `json:"heartbeat_interval" yaml:"heartbeat_interval"` // 上报心跳的间隔 秒
	GenerationTimeout int         `json:"generation_timeout" yaml:"generation_timeout"` // 单次生成的超时 秒，0表示不限制
}

// Master Worker相关的配置
type Config struct {
	Master *MasterConfig  `json:"master" yaml:"master"`
	Worker *WorkerConfig  `json:"worker" yaml:"worker"`
	MySQL  *MySQLDatabase `json:"mysql" yaml:"mysql"`
	Mongo  *MongoConfig   `json:"mongo" yaml:"mongo"`
	Debug  bool           `json:"debug" yaml:"debug"`
}

func ParseConfig() (err error) {
	var (
		fileName   string
		content    []byte
		contentStr string
	)

	if config != nil {
		return
	}

	// 获取配置文件: 每次要调试，执行的时候工作路径不同，所以设置成用环境变量来处理
	// 如果传递的最后一个参数是.yaml那么它是配置文件
	if strings.HasSuffix(os.Args[len(os.Args)-1], ".yaml") {
		fileName = os.Args[len(os.Args)-1]
	} else {
		if os.Getenv("MODELBENCH_CONFIG_FILENAME") != "" {
			fileName = os.Getenv("MODELBENCH_CONFIG_FILENAME")
		} else {
			fileName = "./config.yaml"
		}
	}

	// 判断文件是否存在
	if _, err = os.Stat(fileName); err != nil {
		if os.IsNotExist(err) {
			if fileName == "./config.yaml" {
				fileName = "../config.yaml"
			} else {
				log.Println("配置文件不存在：", fileName)
			}
		}
		err = nil
	}

	if _, statErr := os.Stat(fileName); statErr != nil {
		// 找不到配置文件的时候使用默认配置
		log.Println("未找到配置文件，使用默认配置：", fileName)
		content = []byte{}
	} else if content, err = ioutil.ReadFile(fileName); err != nil {
		return
	} else {
		contentStr = string(content)

		// 正则替换环境变量：${ENV_NAME:default}
		r := regexp.MustCompile(`\$\{(.*?)\}`)
		results := r.FindAllStringSubmatch(contentStr, -1)

		for _, envStr := range results {
			var envName, envValue, envDefault string
			if envStr[1] != "" {
				envNameAndDefaultArry := strings.Split(envStr[1], ":")
				envName = envNameAndDefaultArry[0]
				envValue = os.Getenv(envName)
				if len(envNameAndDefaultArry) == 2 {
					envDefault = envNameAndDefaultArry[1]
				}
				if envValue == "" && envDefault != "" {
					envValue = envDefault
				}
			}
			// 对环境变量进行替换
			contentStr = strings.ReplaceAll(contentStr, envStr[0], envValue)
		}

		// 替换完了，修改content
		content = []byte(contentStr)
	}

	// 解析配置: 先填充默认值
	config = &Config{
		Master: &MasterConfig{
			Http: &HttpConfig{
				Host:    "0.0.0.0",
				Port:    9000,
				Timeout: 5000,
			},
			Web: &HttpConfig{
				Host:    "0.0.0.0",
				Port:    9001,
				Timeout: 5000,
			},
			Heartbeat: &HeartbeatConfig{
				Interval:      5,
				MaxMissed:     3,
				CheckInterval: 30,
			},
			Benchmark: &BenchmarkSettings{
				Cooldown:         1,
				IterationTimeout: 0,
				OllamaUrl:        "http://127.0.0.1:11434",
			},
			Prompts: "./prompts",
		},
		Worker: &WorkerConfig{
			Http: &HttpConfig{
				Host:    "0.0.0.0",
				Port:    9100,
				Timeout: 5000,
			},
			MasterUrl:         "http://127.0.0.1:9000",
			OllamaUrl:         "http://127.0.0.1:11434",
			HeartbeatInterval: 5,
			GenerationTimeout: 0,
		},
		MySQL: &MySQLDatabase{
			Host:     "127.0.0.1",
			Port:     3306,
			User:     "root",
			Password: "root",
			Database: "modelbench",
		},
		Mongo: &MongoConfig{
			Hosts:    []string{"127.0.0.1:27017"},
			User:     "admin",
			Password: "password",
		},
	}

	if err = yaml.Unmarshal(content, config); err != nil {
		return err
	} else {
		// 解析成功后，修正下不合理的值
		if config.Master.Heartbeat.Interval < 1 {
			config.Master.Heartbeat.Interval = 1
		}
		if config.Master.Heartbeat.MaxMissed < 1 {
			config.Master.Heartbeat.MaxMissed = 1
		}
		if config.Master.Heartbeat.CheckInterval < 1 {
			config.Master.Heartbeat.CheckInterval = 1
		}
		if config.Worker.HeartbeatInterval < 1 {
			config.Worker.HeartbeatInterval = 1
		}
	}

	return
}

// 获取配置
func GetConfig() *Config {
	if config != nil {
		return config
	} else {
		if err := ParseConfig(); err != nil {
			log.Println("解析配置文件出错", err)
			os.Exit(1)
			return nil
		} else {
			return config
		}
	}
}

// 获取worker生成接口的socket连接地址
// address是worker上报的http地址，比如: http://192.168.1.101:9100
func GetGenerateSocketUrl(address string, model string) (socketUrl string, err error) {
	var (
		workerUrl *url.URL
		schema    string
		path      string
	)

	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("worker的地址为空")
	}

	if workerUrl, err = url.Parse(address); err != nil {
		return "", err
	} else {
		// 获取socket的地址
		if workerUrl.Scheme == "https" {
			schema = "wss"
		} else {
			schema = "ws"
		}

		if strings.HasSuffix(workerUrl.Path, "/") {
			path = fmt.Sprintf("%sws/generate/%s", workerUrl.Path, model)
		} else {
			path = fmt.Sprintf("%s/ws/generate/%s", workerUrl.Path, model)
		}

		socketUrl = fmt.Sprintf("%s://%s%s", schema, workerUrl.Host, path)
		return socketUrl, nil
	}
}
