package registry

import (
	"sync"
	"time"

	"github.com/codelieche/modelbench/backend/common/datamodels"
	"github.com/google/uuid"
)

// 注册表中的一条worker记录
// 每条记录有自己的锁：不同worker的心跳互相不阻塞，同一个worker的更新按到达顺序串行
type workerEntry struct {
	mux    sync.Mutex
	worker *datamodels.Worker
}

// Worker注册表
// worker的注册、心跳、健康判断都在这里，是整个master唯一的共享可变状态
type Registry struct {
	mux       sync.RWMutex
	workers   map[string]*workerEntry
	interval  time.Duration    // 心跳的间隔
	maxMissed int              // 最多可丢失的心跳次数
	now       func() time.Time // 当前时间：测试的时候可替换
}

// 实例化Registry
func NewRegistry(interval time.Duration, maxMissed int) *Registry {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if maxMissed < 1 {
		maxMissed = 3
	}

	return &Registry{
		workers:   make(map[string]*workerEntry),
		interval:  interval,
		maxMissed: maxMissed,
		now:       time.Now,
	}
}

// 健康的判断阈值：距离上次心跳超过这个时长就是不健康的
func (registry *Registry) healthTimeout() time.Duration {
	return registry.interval * time.Duration(registry.maxMissed)
}

// 注册worker：总是会成功
// 重复注册会覆盖之前的记录，并生成新的token（旧的token随之失效）
// 注册后available是false，等第一次心跳上报了才算可用
func (registry *Registry) Register(name string, version string, address string,
	hardware *datamodels.Hardware) (token string) {

	token = uuid.New().String()

	worker := &datamodels.Worker{
		Name:              name,
		Token:             token,
		Version:           version,
		Address:           address,
		Available:         false,
		LastHeartbeatTime: registry.now(),
		Hardware:          hardware,
	}

	registry.mux.Lock()
	registry.workers[name] = &workerEntry{worker: worker}
	registry.mux.Unlock()

	return token
}

// 获取记录，没有的时候创建一条（给心跳的隐式注册用）
func (registry *Registry) getOrCreateEntry(name string) *workerEntry {
	registry.mux.RLock()
	entry, isExist := registry.workers[name]
	registry.mux.RUnlock()
	if isExist {
		return entry
	}

	registry.mux.Lock()
	defer registry.mux.Unlock()
	// 拿写锁之前可能别的协程已经创建了，需再判断一次
	if entry, isExist = registry.workers[name]; isExist {
		return entry
	}

	entry = &workerEntry{
		worker: &datamodels.Worker{
			Name:  name,
			Token: uuid.New().String(),
		},
	}
	registry.workers[name] = entry
	return entry
}

// 处理worker的心跳
// worker不存在的时候不报错，而是隐式的注册一条记录：
// master重启后worker还在发心跳，这样能自动恢复，不用等worker重新注册
// 返回false只代表内部出错，不代表worker不存在
func (registry *Registry) Heartbeat(request *datamodels.HeartbeatRequest) bool {
	if request == nil || request.Name == "" {
		return false
	}

	entry := registry.getOrCreateEntry(request.Name)

	entry.mux.Lock()
	worker := entry.worker
	worker.Version = request.Version
	if request.Address != "" {
		worker.Address = request.Address
	}
	worker.Available = request.Available
	worker.LastHeartbeatTime = registry.now()
	worker.MissedHeartbeats = 0
	// 模型列表每次整体替换，不做增量的比较
	worker.Models = request.Models
	entry.mux.Unlock()

	return true
}

// 判断worker是否健康：
// available是true 且 距离上次心跳没超过 interval * maxMissed
// 纯判断，没有副作用
func (registry *Registry) IsHealthy(name string) bool {
	registry.mux.RLock()
	entry, isExist := registry.workers[name]
	registry.mux.RUnlock()
	if !isExist {
		return false
	}

	entry.mux.Lock()
	defer entry.mux.Unlock()
	return registry.isEntryHealthy(entry.worker)
}

// 调用方需要持有entry的锁
func (registry *Registry) isEntryHealthy(worker *datamodels.Worker) bool {
	if !worker.Available {
		return false
	}
	elapsed := registry.now().Sub(worker.LastHeartbeatTime)
	return elapsed < registry.healthTimeout()
}

// 获取worker的记录
// 不存在或者不健康都返回nil：调用方不用区分这两种情况，对外统一是not found
func (registry *Registry) Get(name string) *datamodels.Worker {
	registry.mux.RLock()
	entry, isExist := registry.workers[name]
	registry.mux.RUnlock()
	if !isExist {
		return nil
	}

	entry.mux.Lock()
	defer entry.mux.Unlock()
	if !registry.isEntryHealthy(entry.worker) {
		return nil
	}

	// 返回一份拷贝，丢失的心跳次数读取的时候重新算
	worker := *entry.worker
	worker.MissedHeartbeats = registry.missedHeartbeats(entry.worker)
	return &worker
}

// 根据上次心跳的时间算丢失的心跳次数
// 只用来展示，健康的判断用的是时间戳本身
func (registry *Registry) missedHeartbeats(worker *datamodels.Worker) int {
	elapsed := registry.now().Sub(worker.LastHeartbeatTime)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / registry.interval)
}

// 获取当前健康的worker列表
// 丢失的心跳次数、距离上次心跳的秒数都是此刻算出来的
func (registry *Registry) ListHealthy() (summaries []*datamodels.WorkerSummary) {
	registry.mux.RLock()
	entries := make([]*workerEntry, 0, len(registry.workers))
	for _, entry := range registry.workers {
		entries = append(entries, entry)
	}
	registry.mux.RUnlock()

	for _, entry := range entries {
		entry.mux.Lock()
		worker := entry.worker
		if registry.isEntryHealthy(worker) {
			summary := &datamodels.WorkerSummary{
				Name:                  worker.Name,
				Version:               worker.Version,
				Address:               worker.Address,
				Available:             worker.Available,
				ModelCount:            len(worker.Models),
				MissedHeartbeats:      registry.missedHeartbeats(worker),
				SecondsSinceHeartbeat: int(registry.now().Sub(worker.LastHeartbeatTime) / time.Second),
			}
			summaries = append(summaries, summary)
		}
		entry.mux.Unlock()
	}

	return summaries
}

// 删除过期的worker记录：只有monitor清理的时候会调用
// 拿到锁之后会再判断一次过期：扫描到删除的间隙里心跳又到了的话就不删
// 删除是彻底的删除，worker想回来需要重新注册
func (registry *Registry) removeIfStale(name string, timeout time.Duration) bool {
	registry.mux.Lock()
	defer registry.mux.Unlock()

	entry, isExist := registry.workers[name]
	if !isExist {
		return false
	}

	entry.mux.Lock()
	elapsed := registry.now().Sub(entry.worker.LastHeartbeatTime)
	entry.mux.Unlock()
	if elapsed < timeout {
		// 心跳又到了，记录是新鲜的
		return false
	}

	delete(registry.workers, name)
	return true
}

// 获取全部记录的名字列表（给monitor遍历用）
func (registry *Registry) names() (names []string) {
	registry.mux.RLock()
	for name := range registry.workers {
		names = append(names, name)
	}
	registry.mux.RUnlock()
	return names
}
