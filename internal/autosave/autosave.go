package autosave

import (
	"errors"
	"sync"
	"time"
)

// State 自动保存状态机状态
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending" // 编辑已合并，等防抖计时器到点
	StateSaving  State = "saving"
	StateSaved   State = "saved"
	StateError   State = "error"
)

// 默认节奏：编辑后约 900ms 合并保存，结果状态展示约 2.5s 后回落
const (
	DefaultDebounce = 900 * time.Millisecond
	DefaultDisplay  = 2500 * time.Millisecond
)

// ErrSaveInFlight 手动保存与进行中的保存撞车
var ErrSaveInFlight = errors.New("保存正在进行，请稍候")

// SaveFunc 持久化回调，由排班会话提供
type SaveFunc func() error

// Coordinator 防抖加单飞的自动保存协调器
//
// 不变式：任一时刻至多一次持久化在途；保存期间到达的编辑只占用
// 一个追加名额，完成后恰好补一次保存，绝不排长队；进行中的保存
// 永不取消，只等它完成
type Coordinator struct {
	mu       sync.Mutex
	state    State
	save     SaveFunc
	debounce time.Duration
	display  time.Duration
	timer    *time.Timer // 防抖计时器，新的编辑会顶掉旧的
	revert   *time.Timer // saved/error 展示窗口回落计时器
	queued   bool        // 在途保存完成后的唯一一次追加保存
	lastErr  error
}

// New 创建协调器；debounce/display 传 0 使用默认值
func New(save SaveFunc, debounce, display time.Duration) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if display <= 0 {
		display = DefaultDisplay
	}
	return &Coordinator{
		state:    StateIdle,
		save:     save,
		debounce: debounce,
		display:  display,
	}
}

// NotifyEdit 记录一次合格编辑：转入 pending 并重置防抖计时器
//
// 保存在途时只登记追加名额，不打断当前保存
func (c *Coordinator) NotifyEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if c.state == StateSaving {
		c.queued = true
		return
	}

	c.state = StatePending
	c.timer = time.AfterFunc(c.debounce, c.fire)
}

// fire 防抖计时器到点
func (c *Coordinator) fire() {
	c.mu.Lock()
	c.timer = nil

	if c.state == StateSaving {
		// 保存在途，登记追加后返回，绝不重入
		c.queued = true
		c.mu.Unlock()
		return
	}

	_ = c.runSaveLocked()
}

// runSaveLocked 执行保存；进入时持锁，返回前释放
//
// 保存期间若有编辑登记了追加名额，完成后立即补一次，且只补一次
func (c *Coordinator) runSaveLocked() error {
	for {
		c.state = StateSaving
		c.mu.Unlock()

		err := c.save()

		c.mu.Lock()
		if c.queued {
			c.queued = false
			continue
		}

		if err != nil {
			c.lastErr = err
			c.state = StateError
		} else {
			c.lastErr = nil
			c.state = StateSaved
		}
		c.armRevertLocked()
		c.mu.Unlock()
		return err
	}
}

// armRevertLocked 安排 saved/error 的展示窗口回落
func (c *Coordinator) armRevertLocked() {
	if c.revert != nil {
		c.revert.Stop()
	}
	c.revert = time.AfterFunc(c.display, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == StateSaved || c.state == StateError {
			c.state = StateIdle
		}
	})
}

// SaveNow 手动保存：取消防抖直接保存；已有保存在途时拒绝
func (c *Coordinator) SaveNow() error {
	c.mu.Lock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if c.state == StateSaving {
		c.mu.Unlock()
		return ErrSaveInFlight
	}

	return c.runSaveLocked()
}

// State 当前状态与最近一次保存错误
func (c *Coordinator) State() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.lastErr
}

// Flush 若有待保存的编辑则立即保存（进程退出前调用）
func (c *Coordinator) Flush() error {
	c.mu.Lock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if c.state != StatePending {
		c.mu.Unlock()
		return nil
	}

	return c.runSaveLocked()
}

// Stop 停掉全部计时器（会话关闭时调用）
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
}
