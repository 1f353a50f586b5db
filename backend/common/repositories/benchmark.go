package repositories

import (
	"context"
	"log"
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/codelieche/modelbench/backend/common/datasources"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BenchmarkRepository interface {
	// 保存Benchmark的结果
	Save(result *datamodels.BenchmarkResult) (string, error)
	// 根据ID获取结果
	Get(id string) (result *datamodels.BenchmarkResult, err error)
	// 获取某个模型的全部结果
	ListByModel(modelName string) (results []*datamodels.BenchmarkResult, err error)
	// 获取某个worker的全部结果
	ListByWorker(worker string) (results []*datamodels.BenchmarkResult, err error)
	// 获取某个模型在某个worker上的全部结果
	ListByModelAndWorker(modelName string, worker string) (results []*datamodels.BenchmarkResult, err error)
	// 获取最近的N条结果
	ListLatest(limit int) (results []*datamodels.BenchmarkResult, err error)
	// 获取某个时间段内的结果
	ListByTimeRange(startTime time.Time, endTime time.Time) (results []*datamodels.BenchmarkResult, err error)
	// 根据ID删除结果
	Delete(id string) (success bool, err error)
}

func NewBenchmarkRepository(mongoDB *datasources.MongoDB) BenchmarkRepository {
	return &benchmarkRepository{mongoDB: mongoDB}
}

type benchmarkRepository struct {
	mongoDB *datasources.MongoDB
}

func (r *benchmarkRepository) Save(result *datamodels.BenchmarkResult) (string, error) {
	// 同一个ID的结果重复保存的时候做替换
	filter := bson.M{"id": result.ID}
	upsert := true
	option := &options.ReplaceOptions{Upsert: &upsert}

	if _, err := r.mongoDB.Collection.ReplaceOne(context.TODO(), filter, result, option); err != nil {
		log.Println("保存benchmark结果出错：", err.Error())
		return "", err
	} else {
		return result.ID, nil
	}
}

func (r *benchmarkRepository) Get(id string) (result *datamodels.BenchmarkResult, err error) {
	result = &datamodels.BenchmarkResult{}
	if err = r.mongoDB.Collection.FindOne(context.TODO(), bson.M{"id": id}).Decode(result); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	} else {
		return result, nil
	}
}

// 对游标中的每条数据做反序列化
func (r *benchmarkRepository) decodeResults(cursor *mongo.Cursor) (results []*datamodels.BenchmarkResult, err error) {
	defer cursor.Close(context.TODO())

	for cursor.Next(context.TODO()) {
		result := &datamodels.BenchmarkResult{}
		if err = cursor.Decode(result); err != nil {
			// 单条数据有问题，跳过继续处理后面的
			log.Println("解析benchmark结果出错：", err.Error())
			continue
		}
		results = append(results, result)
	}
	return results, cursor.Err()
}

func (r *benchmarkRepository) find(filter bson.M, option *options.FindOptions) (results []*datamodels.BenchmarkResult, err error) {
	var cursor *mongo.Cursor

	if option != nil {
		cursor, err = r.mongoDB.Collection.Find(context.TODO(), filter, option)
	} else {
		cursor, err = r.mongoDB.Collection.Find(context.TODO(), filter)
	}
	if err != nil {
		return nil, err
	}

	return r.decodeResults(cursor)
}

func (r *benchmarkRepository) ListByModel(modelName string) (results []*datamodels.BenchmarkResult, err error) {
	return r.find(bson.M{"config.model_name": modelName}, nil)
}

func (r *benchmarkRepository) ListByWorker(worker string) (results []*datamodels.BenchmarkResult, err error) {
	return r.find(bson.M{"worker": worker}, nil)
}

func (r *benchmarkRepository) ListByModelAndWorker(modelName string, worker string) (results []*datamodels.BenchmarkResult, err error) {
	return r.find(bson.M{"config.model_name": modelName, "worker": worker}, nil)
}

func (r *benchmarkRepository) ListLatest(limit int) (results []*datamodels.BenchmarkResult, err error) {
	if limit <= 0 {
		limit = 10
	}

	limit64 := int64(limit)
	option := &options.FindOptions{
		Sort:  bson.M{"start_time": -1},
		Limit: &limit64,
	}
	return r.find(bson.M{}, option)
}

func (r *benchmarkRepository) ListByTimeRange(startTime time.Time, endTime time.Time) (results []*datamodels.BenchmarkResult, err error) {
	filter := bson.M{
		"start_time": bson.M{"$gte": startTime, "$lte": endTime},
	}
	option := &options.FindOptions{
		Sort: bson.M{"start_time": -1},
	}
	return r.find(filter, option)
}

func (r *benchmarkRepository) Delete(id string) (success bool, err error) {
	if deleteResult, err := r.mongoDB.Collection.DeleteOne(context.TODO(), bson.M{"id": id}); err != nil {
		return false, err
	} else {
		return deleteResult.DeletedCount > 0, nil
	}
}
