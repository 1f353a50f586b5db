package datasources

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client     *mongo.Client
	Database   *mongo.Database
	Collection *mongo.Collection
}

var mongoDB *MongoDB

func connectMongoDB(mongoConfig *common.MongoConfig) {
	// 定义变量
	var (
		option *options.ClientOptions
		client *mongo.Client
		err    error

		database   *mongo.Database
		collection *mongo.Collection
	)

	// 配置文件
	timeOut := time.Duration(10) * time.Second
	option = &options.ClientOptions{
		Auth: &options.Credential{
			Username: mongoConfig.User,
			Password: mongoConfig.Password,
		},
		ConnectTimeout: &timeOut,
		Hosts:          mongoConfig.Hosts,
	}

	// 连接客户端
	if client, err = mongo.Connect(context.TODO(), option); err != nil {
		log.Println("连接MongoDB数据库出错：", err)
		os.Exit(1)
	}

	// 选择数据库
	if mongoConfig.Database == "" {
		mongoConfig.Database = "modelbench"
	}

	database = client.Database(mongoConfig.Database)
	// benchmark的结果保存在benchmarks集合中
	collection = database.Collection("benchmarks")

	// 实例化MongoDB
	mongoDB = &MongoDB{
		Client:     client,
		Database:   database,
		Collection: collection,
	}
}

func GetMongoDB() *MongoDB {
	if mongoDB != nil {
		return mongoDB
	} else {
		// 1. 获取配置
		config := common.GetConfig()
		connectMongoDB(config.Mongo)
		return mongoDB
	}
}
