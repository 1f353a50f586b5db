package ollama

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/levigross/grequests"
)

// ollama的客户端
// worker用它获取模型列表、执行生成；master本地benchmark的时候也会用
type Client struct {
	BaseUrl string        // ollama服务的地址，比如: http://127.0.0.1:11434
	Timeout time.Duration // tags这类短请求的超时，0表示不限制

	// 生成的超时，0表示不限制
	// 生成是流式的，耗时跟着内容的长度走，不能用短请求的超时去限制它
	GenerateTimeout time.Duration
}

// 实例化Client
func NewClient(baseUrl string, timeout time.Duration) *Client {
	baseUrl = strings.TrimSuffix(strings.TrimSpace(baseUrl), "/")
	if baseUrl == "" {
		baseUrl = "http://127.0.0.1:11434"
	}

	return &Client{
		BaseUrl: baseUrl,
		Timeout: timeout,
	}
}

func (client *Client) requestOptions() *grequests.RequestOptions {
	options := &grequests.RequestOptions{
		Headers: map[string]string{"Content-Type": "application/json"},
	}
	if client.Timeout > 0 {
		options.RequestTimeout = client.Timeout
	}
	return options
}

// 生成请求的options：超时单独算
func (client *Client) generateOptions() *grequests.RequestOptions {
	options := &grequests.RequestOptions{
		Headers: map[string]string{"Content-Type": "application/json"},
	}
	if client.GenerateTimeout > 0 {
		options.RequestTimeout = client.GenerateTimeout
	}
	return options
}

// 判断ollama是否可用
func (client *Client) CheckConnection() bool {
	url := fmt.Sprintf("%s/api/tags", client.BaseUrl)
	if response, err := grequests.Get(url, client.requestOptions()); err != nil {
		return false
	} else {
		defer response.Close()
		return response.StatusCode == 200
	}
}

// /api/tags返回的结构
type tagsResponse struct {
	Models []struct {
		Name       string   `json:"name"`
		Size       int64    `json:"size"`
		ModifiedAt string   `json:"modified_at"`
		Digest     string   `json:"digest"`
	} `json:"models"`
}

// 获取本机安装的模型列表
func (client *Client) ListModels() (models []*datamodels.Model, err error) {
	var (
		url      string
		response *grequests.Response
	)

	url = fmt.Sprintf("%s/api/tags", client.BaseUrl)
	if response, err = grequests.Get(url, client.requestOptions()); err != nil {
		return nil, err
	}
	defer response.Close()

	if response.StatusCode != 200 {
		return nil, fmt.Errorf("获取模型列表出错：%d %s", response.StatusCode, response.String())
	}

	tags := &tagsResponse{}
	if err = response.JSON(tags); err != nil {
		return nil, err
	}

	return parseModels(tags), nil
}

// 把/api/tags的内容整理成Model的列表
func parseModels(tags *tagsResponse) (models []*datamodels.Model) {
	for _, item := range tags.Models {
		model := &datamodels.Model{
			Name:    item.Name,
			Version: "unknown",
			Size:    item.Size,
		}

		// 名字中冒号后面的部分当做标签，比如: llama2:7b
		if index := strings.Index(item.Name, ":"); index > 0 {
			model.Tags = []string{item.Name[index+1:]}
		}

		if modified, parseErr := time.Parse(time.RFC3339Nano, item.ModifiedAt); parseErr == nil {
			model.Modified = modified
		}

		models = append(models, model)
	}
	return models
}

// /api/generate流式返回的每一行
type generateLine struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// 执行一次生成
// ollama按行流式返回，每个片段都会回调handler；返回值是累积的完整内容
// handler可以是nil：只要完整的结果，不关心过程
func (client *Client) Generate(model string, prompt string, options map[string]interface{},
	handler func(response string, done bool) error) (fullResponse string, err error) {

	var (
		url      string
		response *grequests.Response
		builder  strings.Builder
	)

	url = fmt.Sprintf("%s/api/generate", client.BaseUrl)

	requestOptions := client.generateOptions()
	requestOptions.JSON = map[string]interface{}{
		"model":   model,
		"prompt":  prompt,
		"stream":  true,
		"options": options,
	}

	if response, err = grequests.Post(url, requestOptions); err != nil {
		return "", err
	}
	defer response.Close()

	if response.StatusCode != 200 {
		return "", fmt.Errorf("生成出错：%d %s", response.StatusCode, response.String())
	}

	// 按行读流式的响应
	scanner := bufio.NewScanner(response.RawResponse.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		item := &generateLine{}
		if unmarshalErr := json.Unmarshal(line, item); unmarshalErr != nil {
			// 单行格式不对：跳过继续
			log.Println("解析生成的响应出错，跳过：", string(line))
			continue
		}

		builder.WriteString(item.Response)
		if handler != nil {
			if err = handler(item.Response, item.Done); err != nil {
				return builder.String(), err
			}
		}

		if item.Done {
			return builder.String(), nil
		}
	}

	if err = scanner.Err(); err != nil {
		return builder.String(), err
	}
	// 没读到done就结束了，当做生成已经完成
	return builder.String(), nil
}
