package kernel

const kernelDebug = false

func debugLog(msg string, t *Thread) {
	if kernelDebug {
		println("--- kernel:", msg, t.name, t.id, "prio", t.prio)
	}
}
