package exec

import "sync"

// ResetHook is invoked exactly once, after the last live accelerator
// executor on a given device is destroyed, if that device was created with
// reset-on-last enabled. The live-executor counters of all devices sit in
// one process-wide table guarded by a single mutex shared by every device;
// there is no separate mutex per device.
type ResetHook func(deviceID int)

type deviceState struct {
	mu   sync.Mutex
	live map[int]int
	hook map[int]ResetHook
}

var devices = &deviceState{
	live: make(map[int]int),
	hook: make(map[int]ResetHook),
}

// registerDevice increments the live-executor counter for deviceID and
// records the reset hook to fire (if any) when the counter returns to zero.
// A nil hook means reset-on-last was not requested for this executor.
func registerDevice(deviceID int, hook ResetHook) {
	devices.mu.Lock()
	defer devices.mu.Unlock()
	devices.live[deviceID]++
	if hook != nil {
		devices.hook[deviceID] = hook
	}
}

// releaseDevice decrements the live-executor counter for deviceID, firing
// the registered reset hook exactly once if this was the last live executor
// on that device.
func releaseDevice(deviceID int) {
	devices.mu.Lock()
	defer devices.mu.Unlock()
	devices.live[deviceID]--
	if devices.live[deviceID] <= 0 {
		if hook, ok := devices.hook[deviceID]; ok && hook != nil {
			hook(deviceID)
			delete(devices.hook, deviceID)
		}
		delete(devices.live, deviceID)
	}
}

// LiveExecutors reports the current live-executor count for deviceID,
// primarily for tests.
func LiveExecutors(deviceID int) int {
	devices.mu.Lock()
	defer devices.mu.Unlock()
	return devices.live[deviceID]
}
