package main

import (
	"log"
	"runtime"

	"github.com/codelieche/modelbench/backend/worker"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	runtime.GOMAXPROCS(runtime.NumCPU())
}

func main() {
	log.Println("worker开始运行！")

	// 实例化worker
	workerApp := worker.NewWorkerApp()

	// 运行worker程序
	workerApp.Run()
}
