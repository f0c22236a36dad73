package reaper

import "sort"

// Scheduler partitions eligible tasks into per-namespace batches and produces
// the dispatch order. Within a namespace, tasks run High before Medium before
// Low. Across namespaces the order is interleaved: two consecutive tasks never
// belong to the same namespace while any other namespace still has pending
// work, so one huge namespace cannot starve the rest of the cluster.
type Scheduler struct {
	// MaxBatchSize caps tasks per namespace per cycle; 0 means no cap.
	// Excess tasks are deferred to the next cycle.
	MaxBatchSize int
}

// Order returns the interleaved dispatch sequence and per-namespace counts of
// tasks deferred by the batch cap.
func (s *Scheduler) Order(tasks []RemediationTask) ([]RemediationTask, map[string]int) {
	queues := make(map[string][]RemediationTask)
	for _, task := range tasks {
		queues[task.Pod.Namespace] = append(queues[task.Pod.Namespace], task)
	}

	deferred := make(map[string]int)
	names := make([]string, 0, len(queues))
	pending := 0

	for ns, q := range queues {
		sort.SliceStable(q, func(i, j int) bool {
			return q[i].Priority.rank() < q[j].Priority.rank()
		})

		if s.MaxBatchSize > 0 && len(q) > s.MaxBatchSize {
			deferred[ns] = len(q) - s.MaxBatchSize
			q = q[:s.MaxBatchSize]
		}

		queues[ns] = q
		names = append(names, ns)
		pending += len(q)
	}

	sort.Strings(names)

	ordered := make([]RemediationTask, 0, pending)
	last := ""
	cursor := 0

	for pending > 0 {
		pick := s.pickNamespace(names, queues, last, cursor)

		ns := names[pick]
		ordered = append(ordered, queues[ns][0])
		queues[ns] = queues[ns][1:]
		pending--

		last = ns
		cursor = (pick + 1) % len(names)
	}

	return ordered, deferred
}

// pickNamespace selects the next namespace to dequeue from: the highest head
// priority among non-empty namespaces other than the last one used, ties
// broken round-robin from the cursor. The last namespace is chosen only when
// no other namespace has pending work.
func (s *Scheduler) pickNamespace(
	names []string,
	queues map[string][]RemediationTask,
	last string,
	cursor int,
) int {
	pick := -1
	bestRank := 0
	lastIdx := -1

	for i := range names {
		idx := (cursor + i) % len(names)
		ns := names[idx]

		if len(queues[ns]) == 0 {
			continue
		}

		if ns == last {
			lastIdx = idx

			continue
		}

		if rank := queues[ns][0].Priority.rank(); pick == -1 || rank < bestRank {
			pick = idx
			bestRank = rank
		}
	}

	if pick == -1 {
		return lastIdx
	}

	return pick
}
