package registry

import (
	"log"
	"time"
)

// 心跳监控器
// 周期性的扫描注册表，清理掉长时间没心跳的worker
type Monitor struct {
	registry *Registry
	interval time.Duration // 扫描的周期
	stopChan chan bool     // 停止的通道
}

// 实例化Monitor
func NewMonitor(registry *Registry, checkInterval time.Duration) *Monitor {
	if checkInterval <= 0 {
		checkInterval = 30 * time.Second
	}

	return &Monitor{
		registry: registry,
		interval: checkInterval,
		stopChan: make(chan bool, 1),
	}
}

// 启动监控循环
// 收到停止信号后，最多一个周期内退出
func (monitor *Monitor) Start() {
	go monitor.loop()
}

func (monitor *Monitor) loop() {
	ticker := time.NewTicker(monitor.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			monitor.Sweep()
		case <-monitor.stopChan:
			log.Println("心跳监控器退出")
			return
		}
	}
}

// 停止监控
func (monitor *Monitor) Stop() {
	monitor.stopChan <- true
}

// 扫描一次注册表
// 超过阈值的记录整个删除掉；没超过的只更新下展示用的丢失心跳次数
// 单条记录处理出了问题不影响其它记录
func (monitor *Monitor) Sweep() (evicted []string) {
	var (
		registry = monitor.registry
		timeout  = registry.healthTimeout()
	)

	for _, name := range registry.names() {
		if isStale := monitor.checkWorker(name, timeout); !isStale {
			continue
		}
		// 删除前再判断一次：这个间隙里心跳又到了的worker不能删
		if isRemoved := registry.removeIfStale(name, timeout); isRemoved {
			evicted = append(evicted, name)
		}
	}

	if len(evicted) > 0 {
		log.Println("清理过期的worker：", evicted)
	}

	return evicted
}

// 检查单个worker是否过期
// 里面recover一下：某条记录的处理panic了，跳过它继续处理别的
func (monitor *Monitor) checkWorker(name string, timeout time.Duration) (isStale bool) {
	defer func() {
		if err := recover(); err != nil {
			log.Println("检查worker出错，跳过：", name, err)
			isStale = false
		}
	}()

	registry := monitor.registry

	registry.mux.RLock()
	entry, isExist := registry.workers[name]
	registry.mux.RUnlock()
	if !isExist {
		// 扫描期间已经被删掉了
		return false
	}

	entry.mux.Lock()
	defer entry.mux.Unlock()

	elapsed := registry.now().Sub(entry.worker.LastHeartbeatTime)
	if elapsed >= timeout {
		return true
	}

	// 没过期的，重算下丢失的心跳次数（仅做展示，健康判断看的是时间戳）
	entry.worker.MissedHeartbeats = registry.missedHeartbeats(entry.worker)
	return false
}
