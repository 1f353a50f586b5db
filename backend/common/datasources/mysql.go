package datasources

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/codelieche/modelbench/backend/common"
	"github.com/codelieche/modelbench/backend/common/datamodels"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
)

var db *gorm.DB

var config *common.Config

func initDb() {
	var (
		err      error
		mysqlUri string
	)

	// 1. 先获取配置
	if config == nil {
		config = common.GetConfig()
	}

	// 2. 连接数据库
	mysqlUri = fmt.Sprintf("%s:%s@(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.MySQL.User, config.MySQL.Password,
		config.MySQL.Host, config.MySQL.Port, config.MySQL.Database)
	db, err = gorm.Open("mysql", mysqlUri)
	if err != nil {
		log.Println("连接MySQL数据库出错：", err.Error())
		os.Exit(1)
	}

	// 3. Migrate the Schema
	db.AutoMigrate(&datamodels.Prompt{})

	db.LogMode(config.Debug)

	// 给db设置一个超时时间，小于数据库的超时时间
	db.DB().SetConnMaxLifetime(120 * time.Second)
	db.DB().SetMaxOpenConns(100) // 设置最大打开的连接数，默认是0，表示不限制
	db.DB().SetMaxIdleConns(20)  // 设置最大空闲连接数
}

func GetDb() *gorm.DB {
	if db != nil {
		return db
	} else {
		initDb()
		return db
	}
}
